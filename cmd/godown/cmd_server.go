package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/prakashraj/godown/app/controllers"
	"github.com/prakashraj/godown/app/routes"
	"github.com/prakashraj/godown/app/services"
	"github.com/prakashraj/godown/internal/server"
	"github.com/prakashraj/godown/pkg/router"
)

// godown serve — start the catalog server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog server (HTTP + gRPC health)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// godown route:list — print the REST route table.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Handlers are registered but never invoked, so a nil-backed
		// service is fine here.
		r := router.New()
		routes.RegisterAPI(r, controllers.NewProductsController(services.NewCatalogService(nil, nil)))

		infos := r.Routes()
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
