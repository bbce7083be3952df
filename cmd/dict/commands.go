package dict

import (
	"fmt"
	"github.com/ValentinKolb/dictd/rpc/client"
	"github.com/spf13/cobra"
	"strings"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [word]",
		Short: "Prints the description of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *client.Client) error {
				description, found, err := c.Get(args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("word %q not found", args[0])
				}
				fmt.Println(description)
				return nil
			})
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [word] [description...]",
		Short: "Sets the description of a word",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *client.Client) error {
				if err := c.Set(args[0], strings.Join(args[1:], " ")); err != nil {
					return err
				}
				fmt.Println("set successfully")
				return nil
			})
		},
	}
	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Removes all words from the dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *client.Client) error {
				if err := c.Clear(); err != nil {
					return err
				}
				fmt.Println("cleared successfully")
				return nil
			})
		},
	}
	allCmd = &cobra.Command{
		Use:   "all",
		Short: "Lists all words of the dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *client.Client) error {
				words, err := c.All()
				if err != nil {
					return err
				}
				if len(words) == 0 {
					fmt.Println("the dictionary is empty")
					return nil
				}
				for _, word := range words {
					fmt.Println(word)
				}
				return nil
			})
		},
	}
)
