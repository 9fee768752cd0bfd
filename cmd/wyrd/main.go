// Package main provides the Wyrd CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orneryd/wyrd/pkg/config"
	"github.com/orneryd/wyrd/pkg/serialization"
	"github.com/orneryd/wyrd/pkg/serialization/fb"
	"github.com/orneryd/wyrd/pkg/store"
)

var (
	version = "0.9.3"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wyrd",
		Short: "Wyrd - Logic Engine for Scene Graphs",
		Long: `Wyrd is a logic engine written in Go: a runtime that evaluates a DAG of
typed computational nodes (scripts, animations, timers, bindings) whose
outputs drive a host rendering scene.

The CLI inspects persisted logic files and manages the slot store holding
saved engine buffers.`,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Wyrd v%s (%s), file format %d\n", version, commit, serialization.FileFormatVersion)
		},
	})

	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the nodes and links of a persisted logic file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	rootCmd.AddCommand(inspectCmd)

	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the slot store of saved engine buffers",
	}
	storeCmd.PersistentFlags().String("data-dir", "", "Store directory (default from config)")

	storeCmd.AddCommand(&cobra.Command{
		Use:   "save <slot> <file>",
		Short: "Save a logic file into a slot",
		Args:  cobra.ExactArgs(2),
		RunE:  runStoreSave,
	})
	storeCmd.AddCommand(&cobra.Command{
		Use:   "load <slot> <file>",
		Short: "Write a slot's buffer out to a file",
		Args:  cobra.ExactArgs(2),
		RunE:  runStoreLoad,
	})
	storeCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all slots",
		Args:  cobra.NoArgs,
		RunE:  runStoreList,
	})
	storeCmd.AddCommand(&cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a slot",
		Args:  cobra.ExactArgs(1),
		RunE:  runStoreDelete,
	})
	rootCmd.AddCommand(storeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runInspect decodes the header and payload and prints a summary without
// re-attaching to a scene.
func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	header, payload, err := serialization.ParseHeader(data)
	if err != nil {
		return err
	}
	if _, err := serialization.CheckCompatibility(header); err != nil {
		return err
	}

	root := fb.GetRootAsLogicFile(payload, 0)

	fmt.Printf("host engine %s, runtime %s, file format %d\n",
		header.HostEngine, header.Runtime, header.FileFormat)
	if m := root.Metadata(nil); m != nil {
		fmt.Printf("writer: %s\n", m.Writer())
	}

	fmt.Printf("\ndata arrays (%d):\n", root.DataArraysLength())
	for i := 0; i < root.DataArraysLength(); i++ {
		var d fb.DataArray
		if root.DataArrays(&d, i) {
			fmt.Printf("  [%d] %s: %s\n", d.Id(), d.Name(), d.Type())
		}
	}

	fmt.Printf("\nnodes (%d):\n", root.NodesLength())
	for i := 0; i < root.NodesLength(); i++ {
		var n fb.LogicNode
		if root.Nodes(&n, i) {
			fmt.Printf("  [%d] %s: %s\n", n.Id(), n.Name(), n.Kind())
		}
	}

	fmt.Printf("\nlinks (%d):\n", root.LinksLength())
	for i := 0; i < root.LinksLength(); i++ {
		var l fb.Link
		if root.Links(&l, i) {
			fmt.Printf("  %d/%s -> %d/%s\n", l.SourceNodeId(), l.SourcePath(), l.TargetNodeId(), l.TargetPath())
		}
	}
	return nil
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = cfg.Store.DataDir
	}
	return store.Open(store.Options{DataDir: dataDir, InMemory: cfg.Store.InMemory})
}

func runStoreSave(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Save(args[0], data); err != nil {
		return err
	}
	fmt.Printf("saved %d bytes to slot '%s'\n", len(data), args[0])
	return nil
}

func runStoreLoad(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	data, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %d bytes from slot '%s' to %s\n", len(data), args[0], args[1])
	return nil
}

func runStoreList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	slots, err := st.List()
	if err != nil {
		return err
	}
	for _, slot := range slots {
		fmt.Println(slot)
	}
	return nil
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted slot '%s'\n", args[0])
	return nil
}
