package main

var (
	RenderFailed = `Sorry, this page could not be rendered. Please try again later.`

	InvalidCredentials = `Invalid credentials`

	StatsUnavailable = `Failed to load statistics`

	CleanupDone = `Privacy cleanup complete`
)
