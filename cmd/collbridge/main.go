package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/hostkit/collection-bridge/bridge"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to guest wasm module")
		funcName    = flag.String("func", "", "Exported function to call (optional)")
		list        = flag.Bool("list", false, "List exported functions and exit")
		interactive = flag.Bool("i", false, "Interactive collection inspector")
		verbose     = flag.Bool("v", false, "Verbose bridge logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		bridge.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: collbridge -wasm <file.wasm> [-func name]")
		fmt.Fprintln(os.Stderr, "       collbridge -wasm <file.wasm> -list")
		fmt.Fprintln(os.Stderr, "       collbridge -i  (interactive inspector)")
		os.Exit(1)
	}

	if err := run(*wasmFile, *funcName, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile, funcName string, listOnly bool) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	eng, err := bridge.NewEngine(ctx, bridge.DefaultOptions())
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	if listOnly {
		exports, err := eng.ExportedFunctions(ctx, data)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(exports))
		for name := range exports {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("Module: %s\n\nExported functions:\n", wasmFile)
		for _, name := range names {
			def := exports[name]
			fmt.Printf("  %s (params: %d, results: %d)\n",
				name, len(def.ParamTypes()), len(def.ResultTypes()))
		}
		return nil
	}

	mod, err := eng.LoadModule(ctx, data)
	if err != nil {
		return err
	}

	if funcName == "" {
		// Nothing to call; the guest's start function already ran.
		fmt.Printf("Loaded %s; %d live container(s)\n", wasmFile, eng.Store().Table().Len())
		return nil
	}

	fn := mod.ExportedFunction(funcName)
	if fn == nil {
		return fmt.Errorf("function %q not exported by %s", funcName, wasmFile)
	}

	results, err := fn.Call(ctx)
	if err != nil {
		return fmt.Errorf("call %s: %w", funcName, err)
	}

	fmt.Printf("%s returned %v\n", funcName, results)
	fmt.Printf("%d live container(s) after the call\n", eng.Store().Table().Len())
	return nil
}
