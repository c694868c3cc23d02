package main

import (
	"github.com/joho/godotenv"

	"github.com/Binaergewitter/datefinder/cmd"
)

func main() {
	godotenv.Load()

	cmd.Execute()
}
