// Command hidepng hides text messages inside PNG files.
//
//	hidepng encode -f cat.png -m "secret message 1"
//	hidepng decode -f cat.png
//	hidepng remove -f cat.png
//	hidepng print  -f cat.png
package main

import (
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
