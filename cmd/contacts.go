package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/contacts"
)

var (
	// add fields
	newName  string
	newEmail string
	newPhone string

	// output
	asJSON bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := contacts.Contact{Name: newName, Email: newEmail, Phone: newPhone}
		res, err := app.contacts.Add(cmd.Context(), c)
		if err != nil {
			return err
		}
		if !res.OK {
			return res.Err()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s <%s>\n", c.Name, c.Email)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contacts sorted by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printContacts(cmd, app.contacts.List(), asJSON)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Find contacts whose name or email contains QUERY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printContacts(cmd, app.contacts.Search(args[0]), asJSON)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove EMAIL",
	Short: "Remove the contact with EMAIL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := app.contacts.Remove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !removed {
			fmt.Fprintf(cmd.OutOrStdout(), "No contact with email %s\n", args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every contact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := app.contacts.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d contacts\n", n)
		return nil
	},
}

// printContacts writes cs as a table, or as a JSON array when asJSON
// is set.
func printContacts(cmd *cobra.Command, cs []contacts.Contact, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cs)
	}
	if len(cs) == 0 {
		fmt.Fprintln(out, "No contacts")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tPHONE")
	for _, c := range cs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Email, c.Phone)
	}
	return tw.Flush()
}

func init() {

	addCmd.Flags().StringVarP(&newName, "name", "n", "", "Name of the contact")

	addCmd.Flags().StringVarP(&newEmail, "email", "e", "", "Email of the contact")

	addCmd.Flags().StringVarP(&newPhone, "phone", "p", "", "Phone of the contact (10-13 digits)")

	listCmd.Flags().BoolVar(&asJSON, "json", false, "Print contacts as JSON")

	searchCmd.Flags().BoolVar(&asJSON, "json", false, "Print contacts as JSON")

	rootCmd.AddCommand(addCmd, listCmd, searchCmd, removeCmd, clearCmd)
}
