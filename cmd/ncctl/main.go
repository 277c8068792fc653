package main

import "github.com/SscSPs/credit_notes_app/internal/ncctl"

func main() {
	ncctl.Execute()
}
