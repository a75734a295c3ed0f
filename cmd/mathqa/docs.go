package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/mathqa/docs.go -o docs`.
//
// @title           mathqa API
// @version         1.0
// @description     Relays Indonesian math questions to a local Ollama model and returns the final LaTeX answer.
//
// @contact.name   mathqa maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
