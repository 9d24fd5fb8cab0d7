package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aoideee/library-catalog/internal/client"
	"github.com/aoideee/library-catalog/internal/data"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage the book catalog",
}

var (
	searchQuery     string
	bookTitle       string
	bookAuthor      string
	bookDescription string
	bookUnits       int
)

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books, optionally filtered by a search term",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		books, err := apiClient().Books()
		if err != nil {
			return err
		}

		// The search is applied locally to the fetched list, matching
		// title or author case-insensitively.
		books = client.FilterBooks(books, searchQuery)

		if len(books) == 0 {
			cmd.Println("No books found.")
			return nil
		}

		cmd.Printf("%-5s %-35s %-25s %s\n", "ID", "Title", "Author", "Units")
		for _, b := range books {
			cmd.Printf("%-5d %-35s %-25s %d\n", b.ID, truncate(b.Title, 35), truncate(b.Author, 25), b.Units)
		}
		return nil
	},
}

var booksGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		book, err := apiClient().Book(id)
		if err != nil {
			return err
		}

		printBook(cmd, book)
		return nil
	},
}

var booksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := apiClient().CreateBook(bookTitle, bookAuthor, bookDescription, bookUnits)
		if err != nil {
			return err
		}

		cmd.Printf("Added book ID %d.\n", book.ID)
		return nil
	},
}

var booksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a book record",
	Long: `Replace the whole record for a book. Every field is overwritten with
the provided flag values; omitted flags fall back to their zero values,
so pass all of them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		book := &data.Book{
			ID:          id,
			Title:       bookTitle,
			Author:      bookAuthor,
			Description: bookDescription,
			Units:       bookUnits,
		}

		if err := apiClient().UpdateBook(book); err != nil {
			return err
		}

		cmd.Printf("Updated book ID %d.\n", id)
		return nil
	},
}

var booksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := apiClient().DeleteBook(id); err != nil {
			return err
		}

		cmd.Printf("Deleted book ID %d.\n", id)
		return nil
	},
}

func init() {
	booksListCmd.Flags().StringVar(&searchQuery, "search", "", "Filter by title or author substring")

	for _, c := range []*cobra.Command{booksAddCmd, booksUpdateCmd} {
		c.Flags().StringVar(&bookTitle, "title", "", "Book title")
		c.Flags().StringVar(&bookAuthor, "author", "", "Book author")
		c.Flags().StringVar(&bookDescription, "description", "", "Book description")
		c.Flags().IntVar(&bookUnits, "units", 0, "Number of available copies")
	}

	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksGetCmd)
	booksCmd.AddCommand(booksAddCmd)
	booksCmd.AddCommand(booksUpdateCmd)
	booksCmd.AddCommand(booksDeleteCmd)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid book id %q", raw)
	}
	return id, nil
}

func printBook(cmd *cobra.Command, b *data.Book) {
	cmd.Printf("ID:          %d\n", b.ID)
	cmd.Printf("Title:       %s\n", b.Title)
	cmd.Printf("Author:      %s\n", b.Author)
	cmd.Printf("Description: %s\n", b.Description)
	cmd.Printf("Units:       %d\n", b.Units)
}

// truncate shortens s to at most max characters, counting runes so a
// multi-byte title is never cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
