package scheme

// EmptyName is the designated empty scheme's name; parent references to it
// are never serialized.
const EmptyName = "Empty"

var emptyScheme *Scheme

func init() {
	emptyScheme = New(EmptyName)
	emptyScheme.SetAttributes(TextKey, &TextAttributes{
		Foreground: cloneColor(&Black),
		Background: cloneColor(&White),
	})
	emptyScheme.readOnly = true
	emptyScheme.canBeDeleted = false
}

// Empty returns the designated empty scheme: the parent of last resort for
// any scheme whose declared parent cannot be resolved. Callers must not
// mutate it.
func Empty() *Scheme { return emptyScheme }
