package main

import "github.com/res5515/jcommune/internal/cli"

func main() {
	cli.Execute()
}
