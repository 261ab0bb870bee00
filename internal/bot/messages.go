package bot

import "fmt"

const (
	msgNotAllowed = "You are not allowed to use this bot."

	msgWelcome = `Welcome! I keep simple ledgers for you.

Commands:
  new <name>      create an account and make it active
  switch <name>   make an account active (created on first reference)
  list            list all accounts
  current         show the active account and its report
  clear [name]    remove all entries from an account
  delete [name]   delete an account
  start           show this message

Send a plain message to record an entry on the active account:
  -3000 rent      amount first
  rent -3000      label first`

	msgFormatHelp = `I could not read that as a transaction. Use one of:
  <amount> <label>    e.g. "-3000 rent" or "+4000 salary"
  <label> <±amount>   e.g. "rent -3000"`

	msgNoActive = `No active account. Use "switch <name>" to pick one or "new <name>" to create one.`

	msgAskAccountName = "What should the new account be called?"

	msgStoreFailure = "Something went wrong on my side, please try again."
)

func msgUnknownCommand(command string) string {
	return fmt.Sprintf("Unknown command %q. Send \"start\" for help.", command)
}
