package main

import "hws_news/internal/cli"

func main() {
	cli.Execute()
}
