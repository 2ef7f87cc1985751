package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func init() {
	log.SetOutput(io.Discard)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := root(ctx, os.Args[1:]...)
	stop()
	os.Exit(code)
}
