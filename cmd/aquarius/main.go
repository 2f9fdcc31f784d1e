// Command aquarius issues HTTP/2 load test requests against a target
// server and reports a summary of the results.
package main

import "github.com/thetangentline/aquarius/internal/cli"

func main() {
	cli.Execute()
}
