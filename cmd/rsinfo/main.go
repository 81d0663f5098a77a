package main

// SPDX-FileCopyrightText: The Redwood Authors

import (
	redwood "github.com/doismellburning/redwood/src"
)

func main() {
	redwood.RSInfoMain()
}
