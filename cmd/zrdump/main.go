package main

import (
	"github.com/oy3o/zrcodec/cmd/zrdump/cmd"
)

func main() {
	cmd.Execute()
}
