// Command issue-dev-token prints an access token signed with the configured
// jwt key, for local testing without the auth service.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/jwt"
	"github.com/itchan-dev/forum/shared/logger"
)

func main() {
	var (
		configFolder string
		uid          int64
		admin        bool
	)
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Int64Var(&uid, "uid", 1, "user id to put into the token")
	flag.BoolVar(&admin, "admin", false, "issue an admin token")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	token, err := jwt.New(cfg.JwtKey(), cfg.JwtTTL()).NewToken(domain.User{Id: uid, Admin: admin})
	if err != nil {
		logger.Log.Error("failed to issue token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "valid for %s; send as \"Authorization: Bearer <token>\"\n", cfg.JwtTTL())
}
