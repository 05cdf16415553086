package engines

import (
	"fmt"

	"github.com/agnosticeng/searchd-client/internal/searchd"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "engines",
		Usage: "list registered sql engines",
		Action: func(ctx *cli.Context) error {
			for _, name := range searchd.DefaultRegistry().Names() {
				fmt.Println(name)
			}

			return nil
		},
	}
}
