// Package teams holds the competing team records stations reference through
// their owner id. Scoring lives outside this core.
package teams

type Team struct {
	ID        int64
	Name      string
	ShortName string
	Points    int
	IsActive  bool
}
