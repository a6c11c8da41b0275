package scheme

// stripeSwap is one entry of the error-stripe palette migration: if a
// record's stripe color equals Old, it becomes New.
type stripeSwap struct {
	Old Color
	New Color
}

// StripeMigration maps attribute key names to their stripe color swap. It
// is applied to documents with version below 141 that declare a parent.
// The table is immutable configuration handed to a scheme at construction
// rather than package-wide mutable state.
type StripeMigration map[string]stripeSwap

// DefaultStripeMigration returns the standard table covering the handful of
// inspection markers whose stripe palette changed in version 141.
func DefaultStripeMigration() StripeMigration {
	return StripeMigration{
		ErrorsKey.ExternalName():                 {Red, MustColor("CF5B56")},
		WarningsKey.ExternalName():               {Yellow, MustColor("EBC700")},
		ExecutionPointKey.ExternalName():         {Blue, MustColor("3763b0")},
		IdentifierUnderCaretKey.ExternalName():   {MustColor("CCCFFF"), MustColor("BAA8FF")},
		WriteIdentifierUnderCaret.ExternalName(): {MustColor("FFCCE5"), MustColor("F0ADF0")},
		TextSearchResultKey.ExternalName():       {MustColor("586E75"), MustColor("71B362")},
		TodoDefaultKey.ExternalName():            {MustColor("268BD2"), MustColor("54AAE3")},
	}
}

// migrateErrorStripeColor applies the table to one record as it enters the
// attributes map. Only pre-141 documents with a parent are affected.
func (s *Scheme) migrateErrorStripeColor(key *AttributeKey, a *TextAttributes) {
	if s.version >= stripeMigrationVersion || s.parent == nil {
		return
	}
	swap, ok := s.migration[key.ExternalName()]
	if !ok {
		return
	}
	if a.ErrorStripeColor != nil && *a.ErrorStripeColor == swap.Old {
		c := swap.New
		a.ErrorStripeColor = &c
	}
}
