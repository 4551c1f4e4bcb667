package main

import (
	"os"
)

//	@title			Tracklens
//	@version		1.0
//	@description	Explore a music tracks dataset by year, artist and title

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @host		localhost:8080
// @BasePath	/
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
