package user

// Append returns a new list with u added at the end.
func Append(list []User, u User) []User {
	next := make([]User, 0, len(list)+1)
	next = append(next, list...)
	return append(next, u)
}

// Replace returns a new list where every entry with u's identifier is u.
func Replace(list []User, u User) []User {
	return ReplaceByID(list, u.ID, u)
}

// ReplaceByID returns a new list where every entry identified by id is
// replaced with record. Entries are never added.
func ReplaceByID(list []User, id ID, record User) []User {
	next := make([]User, len(list))
	for i, existing := range list {
		if existing.ID.Equal(id) {
			next[i] = record
			continue
		}
		next[i] = existing
	}
	return next
}

// Remove returns a new list without entries identified by id.
func Remove(list []User, id ID) []User {
	next := make([]User, 0, len(list))
	for _, existing := range list {
		if existing.ID.Equal(id) {
			continue
		}
		next = append(next, existing)
	}
	return next
}

// Find returns the first entry identified by id.
func Find(list []User, id ID) (User, bool) {
	for _, existing := range list {
		if existing.ID.Equal(id) {
			return existing, true
		}
	}
	return User{}, false
}
