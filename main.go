package main

import "dating-chat-api/config"

func main() {
	config.RunServer()
}
