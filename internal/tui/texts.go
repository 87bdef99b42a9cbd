package tui

// Farewell is printed when the user quits from the home screen.
const Farewell = "Thank you for using Wish Upon a Brick! See you soon :)"

// User-facing texts.
const (
	promptChoice   = "Enter your choice: "
	promptContinue = "Enter 1 to continue, or 0 to go back: "
	promptViewSet  = "Enter 1 to view full details of a set, or 0 to go back: "
	promptSetKey   = "Enter LEGO set number: "
	promptDetail   = "Enter 1 to [Edit], 2 to [Delete], or 0 to go back: "
	promptEditKey  = "Enter a LEGO set number to edit: "
	promptDelKey   = "Enter a LEGO set number to delete: "
	promptQuickAdd = "Enter details in format (Name, Price, Age, Pieces, Set Number, Description): "
	promptMinAge   = "Enter the minimum age: "
	promptMinPiece = "Enter the minimum number of pieces: "
	promptNumber   = "Enter a LEGO set number to search for: "
	promptName     = "Enter a LEGO set name to search for: "
	promptResult   = "Press 'Enter' to continue: "

	msgInvalidChoice = "Invalid choice...:( Please try again."
	msgNotFound      = "❌ LEGO set not found. Please try again."
	msgEmpty         = "Empty wish list. Going back to the menu to add more!"
	msgInvalidFormat = "❌  Invalid input format. Please try again."
	msgAdded         = "✔️  LEGO set added successfully!"
	msgUpdated       = "✔️  LEGO set updated successfully!"
	msgDeleted       = "✔️  LEGO set deleted successfully!"
	msgWorking       = "Waiting for the worker..."

	headerList     = "Here are the LEGO sets in your wish list:"
	headerAdd      = "[Add a new LEGO set]"
	headerQuickAdd = "[Quick-add a new LEGO set]"

	confirmEdit   = "Are you sure you want to update this set?"
	warnEdit      = "⚠️  Warning: previous data could be overwritten and unrecoverable!"
	confirmDelete = "Are you sure you want to delete this set?"
	warnDelete    = "⚠️  Warning: data erasure, re-add its data if you want this LEGO set back!"
)

const banner = ` _ _ _ _     _      _____                       _____     _     _
| | | |_|___| |_   |  |  |___ ___ ___    ___   | __  |___|_|___| |_
| | | | |_ -|   |  |  |  | . | . |   |  | .'|  | __ -|  _| |  _| '_|
|_____|_|___|_|_|  |_____|  _|___|_|_|  |__,|  |_____|_| |_|___|_,_|
                         |_|`

var homeLines = []string{
	"Welcome to Wish Upon a Brick!",
	"Got LEGO sets that you've been longing to buy?",
	"Keep track of them here with this wish list app with ease!",
	"",
	"Options:",
	"1. Go to menu",
	"0. Quit the app",
}

var menuLines = []string{
	"Menu:",
	"1. 👀  View all LEGO sets",
	"2. ➕  Add a LEGO set",
	"3. ⚡  Quick-add a LEGO set",
	"4. 🖊️   Edit a LEGO set",
	"5. 🗑️   Delete a LEGO set",
	"6. 💲  Sort LEGO sets by price",
	"7. 🔎  Filter LEGO sets",
	"8. 🌐  Search a LEGO set on the web",
	"9. 🧮  Wish list totals",
	"0. ⬅️   Go back to home screen",
}

var sortLines = []string{
	"[Sort LEGO sets by price]",
	"1. Low to high",
	"2. High to low",
	"0. Go back to menu",
}

var filterLines = []string{
	"[Filter LEGO sets]",
	"1. By minimum age",
	"2. By minimum number of pieces",
	"0. Go back to menu",
}

var searchLines = []string{
	"[Search a LEGO set on the web]",
	"1. By LEGO set number",
	"2. By LEGO set name",
	"0. Go back to menu",
}

var totalsLines = []string{
	"[Wish list totals]",
	"1. Total number of LEGO sets",
	"2. Total cost of LEGO sets",
	"3. Total pieces of LEGO sets",
	"0. Go back to menu",
}

// addPrompts follow the order of the add form answers.
var addPrompts = []string{
	"Enter LEGO set name: ",
	"Enter LEGO set price: $",
	"Enter LEGO set age group: ",
	"Enter number of pieces: ",
	"Enter LEGO set number: ",
	"Enter LEGO set description: ",
}

// editFields name the record fields in edit order.
var editFields = []string{"name", "price", "age group", "number of pieces", "description"}
