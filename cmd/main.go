package main

import "github.com/m04kA/SMC-VenueBookingService/internal/cli"

func main() {
	cli.Execute()
}
