package main

import (
	"github.com/curlrequests/toneget/cmd"
)

func main() {
	cmd.Execute()
}
