package publish

import "fmt"

// Title is the shared headline, e.g. "Wordle Answer for January 17, 2026".
func Title(name, date string) string {
	return fmt.Sprintf("%s Answer for %s", name, date)
}

// PinDescription is the Pinterest description for a topic page.
func PinDescription(name, permalink string) string {
	return fmt.Sprintf("Find today's %s answer and hints! Visit %s", name, permalink)
}

// FacebookCaption is the photo message posted to the Page.
func FacebookCaption(title, name, permalink string) string {
	return fmt.Sprintf("🎯 %s\n\n🔗 %s\n\n#Wordle #%s #WordGames #PuzzleGames", title, permalink, name)
}
