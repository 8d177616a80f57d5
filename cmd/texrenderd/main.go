// Command texrenderd serves LaTeX math rendering over HTTP.
package main

import (
	"log"
	"net/http"

	"github.com/texrender/texrender/server"
)

const (
	addr    = "0.0.0.0:3000"
	height  = 100
	padding = 20
)

func main() {
	srv := server.New(server.Config{
		Height:  height,
		Padding: padding,
	})
	log.Printf("listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, srv.Handler()))
}
