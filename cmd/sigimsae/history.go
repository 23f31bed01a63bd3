package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func historyListCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	entries := engine.SearchHistory(c.Context)
	if len(entries) == 0 {
		fmt.Println("History is empty")
		return nil
	}
	for i, q := range entries {
		fmt.Printf("%2d. %s\n", i+1, q)
	}
	return nil
}

func historyClearCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	engine.ClearSearchHistory(c.Context)
	fmt.Println("History cleared")
	return nil
}
