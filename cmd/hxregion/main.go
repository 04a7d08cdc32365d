// Command hxregion inspects region layouts against rendered pages and
// converts layouts to and from request tokens.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
