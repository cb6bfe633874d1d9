package main

// Version is the versync CLI version. Release builds set it via
// -ldflags "-X main.Version=...".
var Version = "dev"
