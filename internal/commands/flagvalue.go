package commands

import "strconv"

// optString is a string flag that records whether it was given.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

// optBool is a boolean flag that records whether it was given, so that
// --flag=false can be told apart from an absent flag.
type optBool struct {
	value bool
	set   bool
}

func (o *optBool) String() string { return strconv.FormatBool(o.value) }

func (o *optBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	o.value = v
	o.set = true
	return nil
}

// IsBoolFlag lets the flag be given without a value.
func (o *optBool) IsBoolFlag() bool { return true }
