package main

import "github.com/publu/l2-lxp-liquidity-reward-sporker/cmd"

func main() {
	cmd.Execute()
}
