package domain

type FieldType string

const (
	TypeString FieldType = "string"
	TypeBool   FieldType = "bool"
	TypeInt    FieldType = "int"
	TypeList   FieldType = "list"
)

func (t FieldType) String() string {
	return string(t)
}

// FieldSpec declares one recognised option. Name is what callers supply,
// Key is the parameter name the remote system stores it under.
type FieldSpec struct {
	Name      string    `validate:"required,lowercase"`
	Key       string    `validate:"omitempty,lowercase"`
	Type      FieldType `validate:"required,oneof=string bool int list"`
	Default   any
	Aliases   []string `validate:"dive,required,lowercase"`
	Secret    bool     // never compared, omitted when not supplied
	Optional  bool     // omitted when not supplied, compared otherwise
	Lowercase bool     // value is lower-cased before comparison
	Unordered bool     // list compared as a set
	Validate  string   // validator tag applied to the resolved value
	Local     bool     // steers the run only, never sent remotely (mount_point)
}

// RemoteKey returns the key the field is stored under remotely.
func (f FieldSpec) RemoteKey() string {
	if f.Key != "" {
		return f.Key
	}
	return f.Name
}
