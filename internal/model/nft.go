package model

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// NFTRecord is an NFT as stored by the application. Chain information may live in a direct
// field, in the metadata or in the attributes.
type NFTRecord struct {
	ID                string      `json:"id,omitempty" mapstructure:"id"`
	Name              string      `json:"name,omitempty" mapstructure:"name"`
	Status            string      `json:"status,omitempty" mapstructure:"status"`
	Type              string      `json:"type,omitempty" mapstructure:"type"`
	Blockchain        string      `json:"blockchain,omitempty" mapstructure:"blockchain"`
	ClaimedBlockchain string      `json:"claimed_blockchain,omitempty" mapstructure:"claimed_blockchain"`
	Chain             string      `json:"chain,omitempty" mapstructure:"chain"`
	AssignedChain     string      `json:"assigned_chain,omitempty" mapstructure:"assigned_chain"`
	Network           string      `json:"network,omitempty" mapstructure:"network"`
	Metadata          NFTMetadata `json:"metadata,omitempty" mapstructure:"-"`

	// AttributeMap holds attributes given as an object, Attributes holds them given as a list.
	AttributeMap map[string]string `json:"-" mapstructure:"-"`
	Attributes   []Attribute       `json:"attributes,omitempty" mapstructure:"-"`
}

type NFTMetadata struct {
	Chain   string `json:"chain,omitempty" mapstructure:"chain"`
	Network string `json:"network,omitempty" mapstructure:"network"`
}

type Attribute struct {
	TraitType string `json:"trait_type" mapstructure:"trait_type"`
	Value     string `json:"value" mapstructure:"value"`
}

// ParseNFTRecord decodes a loosely typed json object into an NFTRecord. Unknown fields are
// ignored; scalar values are converted to strings.
func ParseNFTRecord(raw map[string]any) (NFTRecord, error) {
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "metadata" || k == "attributes" || v == nil {
			continue
		}
		fields[k] = v
	}

	record := NFTRecord{}
	if err := weakDecode(fields, &record); err != nil {
		return NFTRecord{}, err
	}

	if metadata, ok := raw["metadata"].(map[string]any); ok {
		if err := weakDecode(pickScalars(metadata), &record.Metadata); err != nil {
			return NFTRecord{}, fmt.Errorf("invalid metadata: %w", err)
		}
	}

	switch attributes := raw["attributes"].(type) {
	case map[string]any:
		record.AttributeMap = make(map[string]string, len(attributes))
		for k, v := range attributes {
			if s, ok := scalarString(v); ok {
				record.AttributeMap[k] = s
			}
		}

	case []any:
		for _, item := range attributes {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}

			traitType, _ := scalarString(obj["trait_type"])
			value, _ := scalarString(obj["value"])
			record.Attributes = append(record.Attributes, Attribute{TraitType: traitType, Value: value})
		}
	}

	return record, nil
}

func (r *NFTRecord) UnmarshalJSON(b []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	record, err := ParseNFTRecord(raw)
	if err != nil {
		return err
	}

	*r = record
	return nil
}

func weakDecode(input map[string]any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

func pickScalars(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if _, ok := scalarString(v); ok {
			result[k] = v
		}
	}

	return result
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64, int, int64, bool:
		return fmt.Sprint(t), true
	}

	return "", false
}
