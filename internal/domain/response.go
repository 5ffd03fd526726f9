package domain

// Response is the interpreted result of an authenticated API request.
type Response struct {
	// Location is set when the server answered 201 Created.
	Location string
	// Data holds the decoded JSON body; nil for an empty body.
	Data any
}

func (r Response) Created() bool {
	return r.Location != ""
}

func (r Response) Empty() bool {
	return r.Location == "" && r.Data == nil
}
