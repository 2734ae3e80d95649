package sql

// CommandClass is the category assigned to a raw SQL string. It selects
// the execution semantics and the shape of the result.
type CommandClass int

const (
	Unsupported CommandClass = iota
	Read                     // select, describe
	Delete
	Insert
	Update
	DDL // create, alter
)

func (c CommandClass) String() string {
	switch c {
	case Read:
		return "read"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	case Update:
		return "update"
	case DDL:
		return "ddl"
	default:
		return "unsupported"
	}
}

// Classify assigns a command class by scanning the statement's keywords,
// case-insensitively and ignoring quoted literal content. Checks run in a
// fixed order and the first match wins: read before delete before insert
// before update before ddl. The scan is not anchored to the first word, so
// multi-keyword text resolves by that precedence.
func Classify(sqlText string) CommandClass {
	ws := words(sqlText)

	if containsAny(ws, "select", "describe") {
		return Read
	}
	if containsAny(ws, "delete") {
		return Delete
	}
	if containsAny(ws, "insert") {
		return Insert
	}
	if containsAny(ws, "update") {
		return Update
	}
	if containsAny(ws, "create", "alter") {
		return DDL
	}
	return Unsupported
}

// HasWhereClause reports whether the statement contains the word WHERE
// anywhere outside quoted literals. Deliberately loose: it does not check
// that the word belongs to this statement's own WHERE clause.
func HasWhereClause(sqlText string) bool {
	return containsAny(words(sqlText), "where")
}

func containsAny(ws []string, keywords ...string) bool {
	for _, w := range ws {
		for _, k := range keywords {
			if w == k {
				return true
			}
		}
	}
	return false
}
