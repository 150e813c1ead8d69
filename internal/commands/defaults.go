package commands

import "context"

// Default returns a registry holding every built-in command.
func Default() *Registry {
	r := NewRegistry()

	r.Register(Command{Name: "hello", Usage: "hello", Description: "Greet the assistant", Run: hello})

	r.Register(Command{Name: "add-contact", Usage: "add-contact <name> [phone...]",
		Description: "Add a contact or add phones to an existing one", Run: addContact})
	r.Register(Command{Name: "change-contact", Aliases: []string{"edit-contact", "edit-phone"}, Usage: "change-contact <name> <old_phone> <new_phone>",
		Description: "Replace one of a contact's phones", Run: changeContact})
	r.Register(Command{Name: "delete-contact", Usage: "delete-contact <name>",
		Description: "Delete a contact", Run: deleteContact})
	r.Register(Command{Name: "remove-phone", Usage: "remove-phone <name> <phone>",
		Description: "Remove a phone from a contact", Run: removePhone})
	r.Register(Command{Name: "search", Usage: "search <keyword>",
		Description: "Find contacts by name, phone or email", Run: searchContacts})
	r.Register(Command{Name: "phone", Usage: "phone <name>",
		Description: "Show a contact with its notes", Run: showContact})
	r.Register(Command{Name: "all", Usage: "all", Description: "Show all contacts", Run: showAll})

	r.Register(Command{Name: "add-email", Usage: "add-email <name> <email>", Description: "Set a contact's email", Run: addEmail})
	r.Register(Command{Name: "edit-email", Usage: "edit-email <name> <email>", Description: "Change a contact's email", Run: editEmail})
	r.Register(Command{Name: "show-email", Usage: "show-email <name>", Description: "Show a contact's email", Run: showEmail})
	r.Register(Command{Name: "remove-email", Usage: "remove-email <name>", Description: "Remove a contact's email", Run: removeEmail})

	r.Register(Command{Name: "add-address", Usage: "add-address <name> <address...>", Description: "Set a contact's address", Run: addAddress})
	r.Register(Command{Name: "edit-address", Usage: "edit-address <name> <address...>", Description: "Change a contact's address", Run: editAddress})
	r.Register(Command{Name: "show-address", Usage: "show-address <name>", Description: "Show a contact's address", Run: showAddress})
	r.Register(Command{Name: "remove-address", Usage: "remove-address <name>", Description: "Remove a contact's address", Run: removeAddress})

	r.Register(Command{Name: "add-birthday", Usage: "add-birthday <name> <DD.MM.YYYY>", Description: "Set a contact's birthday", Run: addBirthday})
	r.Register(Command{Name: "show-birthday", Usage: "show-birthday <name>", Description: "Show a contact's birthday", Run: showBirthday})
	r.Register(Command{Name: "birthdays", Usage: "birthdays [days]",
		Description: "List birthdays coming up in the next days (weekends move to Monday)", Run: upcomingBirthdays})

	r.Register(Command{Name: "add-note", Usage: "add-note <name> <text...> [#tag...]", Description: "Attach a note to a contact", Run: addNote})
	r.Register(Command{Name: "edit-note", Usage: "edit-note <name> <id> <text...> [#tag...]",
		Description: "Rewrite the first note whose id starts with <id>", Run: editNote})
	r.Register(Command{Name: "remove-note", Usage: "remove-note <name> <id>",
		Description: "Delete every note whose id starts with <id>", Run: removeNote})
	r.Register(Command{Name: "show-notes", Usage: "show-notes <name>", Description: "Show a contact's notes", Run: showNotes})
	r.Register(Command{Name: "all-notes", Usage: "all-notes", Description: "Show all notes", Run: allNotes})
	r.Register(Command{Name: "search-notes", Usage: "search-notes <tag>", Description: "Find notes by tag", Run: searchNotesByTag})
	r.Register(Command{Name: "search-notes-text", Usage: "search-notes-text <keyword>", Description: "Find notes by text", Run: searchNotesByText})

	r.Register(Command{Name: "save", Usage: "save [file]", Description: "Save data, or only contacts to a file", Run: save})
	r.Register(Command{Name: "load", Usage: "load [file]", Description: "Reload data, or load contacts from a file", Run: load})
	r.Register(Command{Name: "export", Usage: "export <file.xlsx>", Description: "Export contacts and notes to a spreadsheet", Run: export})

	r.Register(Command{Name: "help", Usage: "help", Description: "Show this help",
		Run: func(context.Context, *Session, []string) (Reply, error) { return helpReply(r), nil }})
	r.Register(Command{Name: "about", Usage: "about", Description: "About this program", Run: about})
	r.Register(Command{Name: "exit", Aliases: []string{"close", "quit"}, Usage: "exit",
		Description: "Save (when autosave is on) and quit", Run: exit})

	return r
}
