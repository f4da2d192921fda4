// Package main PullGit repository sync daemon API
//
//	@title			PullGit API
//	@version		1.0.0
//	@description	PullGit keeps local working copies of Git repositories in sync with their remotes
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host			localhost:3000
//	@BasePath		/api/v1
package main

import "github.com/pullgit/pullgit/internal"

//go:generate swag init --parseDependency --outputTypes go -g ./main.go -o ./internal/server/docs

func main() {
	internal.Run()
}
