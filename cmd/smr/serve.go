package main

import (
	"github.com/TuftsBCB/microenv/server"
	"github.com/TuftsBCB/microenv/smr"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve SMR evaluation over HTTP",
		Long: `Serve answers JSON requests:

  POST /v1/smr        {"design_pdb", "natural_pdb", "design_resid", "radius"}
  POST /v1/smr/batch  {"requests": [...]}
  GET  /healthz

Structure paths are read from the server's file system.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			gin.SetMode(gin.ReleaseMode)
			s := server.New(eng, a.log)
			return s.ListenAndServe(cmd.Context(), a.cfg.Server.Addr)
		},
	}
	cmd.Flags().String("addr", smr.DefaultConfig().Server.Addr, "address to listen on")
	a.bind("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
