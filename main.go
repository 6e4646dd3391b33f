package main

import "github.com/sparkserves/subscription-checkout/cmd"

func main() {
	cmd.Execute()
}
