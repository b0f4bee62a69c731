package main

import (
	"errors"
	"fmt"

	"github.com/neftit-lab/backend/internal/middleware"
	"github.com/neftit-lab/backend/pkg/authenticator"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) issueAdminToken(cctx *cli.Context) error {
	subject := cctx.Args().First()
	if subject == "" {
		return errors.New("missing subject")
	}

	engine := authenticator.NewTokenEngine[middleware.AdminToken](xcontext.Configs(s.ctx).Auth.AdminToken)
	token, err := engine.Generate(subject, middleware.AdminToken{Role: middleware.RoleAdmin})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
