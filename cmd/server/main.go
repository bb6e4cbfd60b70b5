package main

import "freshsales/internal/app"

func main() {
	app.Run()
}
