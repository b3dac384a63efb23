package types

import (
	"encoding/json"
	"fmt"
)

// IssueTypeTag identifies one arm of the IssueType sum type.
type IssueTypeTag string

const (
	IssueTypeTagTask     IssueTypeTag = "task"
	IssueTypeTagBug      IssueTypeTag = "bug"
	IssueTypeTagFeature  IssueTypeTag = "feature"
	IssueTypeTagEpic     IssueTypeTag = "epic"
	IssueTypeTagChore    IssueTypeTag = "chore"
	IssueTypeTagCustom   IssueTypeTag = "custom"
)

// IssueType mirrors Status: a closed-set sum type plus an open Custom arm.
type IssueType struct {
	Tag    IssueTypeTag
	Custom string
}

var (
	TypeTask    = IssueType{Tag: IssueTypeTagTask}
	TypeBug     = IssueType{Tag: IssueTypeTagBug}
	TypeFeature = IssueType{Tag: IssueTypeTagFeature}
	TypeEpic    = IssueType{Tag: IssueTypeTagEpic}
	TypeChore   = IssueType{Tag: IssueTypeTagChore}
)

var BuiltinIssueTypes = []IssueType{TypeTask, TypeBug, TypeFeature, TypeEpic, TypeChore}

func CustomIssueType(name string) IssueType {
	return IssueType{Tag: IssueTypeTagCustom, Custom: name}
}

func (t IssueType) Equal(other IssueType) bool {
	if t.Tag != other.Tag {
		return false
	}
	if t.Tag == IssueTypeTagCustom {
		return t.Custom == other.Custom
	}
	return true
}

func (t IssueType) IsValid() bool {
	if t.Tag == IssueTypeTagCustom {
		return t.Custom != ""
	}
	switch t.Tag {
	case IssueTypeTagTask, IssueTypeTagBug, IssueTypeTagFeature, IssueTypeTagEpic, IssueTypeTagChore:
		return true
	default:
		return false
	}
}

func (t IssueType) String() string {
	if t.Tag == IssueTypeTagCustom {
		return t.Custom
	}
	return string(t.Tag)
}

type customIssueTypeWire struct {
	Custom string `json:"custom"`
}

func (t IssueType) MarshalJSON() ([]byte, error) {
	if t.Tag == IssueTypeTagCustom {
		return json.Marshal(customIssueTypeWire{Custom: t.Custom})
	}
	return json.Marshal(string(t.Tag))
}

func (t *IssueType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*t = IssueType{Tag: IssueTypeTag(name)}
		if !t.IsValid() {
			return fmt.Errorf("invalid issue type %q", name)
		}
		return nil
	}
	var wire customIssueTypeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("invalid issue type: %w", err)
	}
	if wire.Custom == "" {
		return fmt.Errorf("invalid issue type: empty custom name")
	}
	*t = CustomIssueType(wire.Custom)
	return nil
}
