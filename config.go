package main

type Config struct {
	BaseDir   string
	StateRoot string
}
