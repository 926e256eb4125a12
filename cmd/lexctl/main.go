// Command lexctl is the LexChain backend console.
package main

import "github.com/lexchain/lexctl/cmd/lexctl/app"

func main() {
	app.Main()
}
