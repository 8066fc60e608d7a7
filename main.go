package main

import "court-queue-backend/cmd"

func main() {
	cmd.Run()
}
