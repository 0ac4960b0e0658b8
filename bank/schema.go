package bank

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

const (
	OpClientInfo = "client-info"
	OpStatement  = "statement"
)

// WireAliases maps upstream camelCase field names to record field names.
// Fields not listed keep their wire name.
var WireAliases = map[string]string{
	"sendId":          "send_id",
	"creditLimit":     "credit_limit",
	"currencyCode":    "currency_code",
	"cashbackType":    "cashback_type",
	"maskedPan":       "masked_pan",
	"clientId":        "client_id",
	"webHookUrl":      "webhook_url",
	"originalMcc":     "original_mcc",
	"operationAmount": "operation_amount",
	"commissionRate":  "commission_rate",
	"cashbackAmount":  "cashback_amount",
	"receiptId":       "receipt_id",
	"invoiceId":       "invoice_id",
	"counterEdrpou":   "counter_edrpou",
	"counterIban":     "counter_iban",
	"counterName":     "counter_name",
}

// Canonical returns the record field name for a wire field name.
func Canonical(wire string) string {
	if name, ok := WireAliases[wire]; ok {
		return name
	}
	return wire
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindBool
	kindStrings
	kindObjects
)

func (k fieldKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindInt:
		return "integer"
	case kindBool:
		return "boolean"
	case kindStrings:
		return "array of strings"
	case kindObjects:
		return "array of objects"
	}
	return "unknown"
}

type field struct {
	wire     string
	name     string
	kind     fieldKind
	required bool
	elem     []field
}

func required(wire string, kind fieldKind) field {
	return field{wire: wire, name: Canonical(wire), kind: kind, required: true}
}

func optional(wire string, kind fieldKind) field {
	return field{wire: wire, name: Canonical(wire), kind: kind}
}

func objects(wire string, req bool, elem []field) field {
	return field{wire: wire, name: Canonical(wire), kind: kindObjects, required: req, elem: elem}
}

var accountSchema = []field{
	required("id", kindString),
	required("sendId", kindString),
	required("balance", kindInt),
	required("creditLimit", kindInt),
	required("type", kindString),
	required("currencyCode", kindInt),
	required("cashbackType", kindString),
	required("maskedPan", kindStrings),
	required("iban", kindString),
}

var jarSchema = []field{
	required("id", kindString),
	required("sendId", kindString),
	required("title", kindString),
	optional("description", kindString),
	required("currencyCode", kindInt),
	required("balance", kindInt),
	optional("goal", kindInt),
}

var clientInfoSchema = []field{
	required("clientId", kindString),
	required("name", kindString),
	required("webHookUrl", kindString),
	required("permissions", kindString),
	objects("accounts", true, accountSchema),
	objects("jars", false, jarSchema),
}

var statementItemSchema = []field{
	required("id", kindString),
	required("time", kindInt),
	required("description", kindString),
	required("mcc", kindInt),
	required("originalMcc", kindInt),
	required("hold", kindBool),
	required("amount", kindInt),
	required("operationAmount", kindInt),
	required("currencyCode", kindInt),
	required("commissionRate", kindInt),
	required("cashbackAmount", kindInt),
	required("balance", kindInt),
	optional("comment", kindString),
	optional("receiptId", kindString),
	optional("invoiceId", kindString),
	optional("counterEdrpou", kindString),
	optional("counterIban", kindString),
	optional("counterName", kindString),
}

// ParseClientInfo validates a client-info document and builds the record.
func ParseClientInfo(body []byte) (ClientInfo, error) {
	if !gjson.ValidBytes(body) {
		return ClientInfo{}, &ValidationError{Op: OpClientInfo, Path: "$", Reason: "body is not valid json"}
	}

	doc := gjson.ParseBytes(body)

	if err := validateObject(doc, clientInfoSchema, ""); err != nil {
		err.Op = OpClientInfo
		return ClientInfo{}, err
	}

	var info ClientInfo
	if err := decode(canonicalize(doc, clientInfoSchema), &info); err != nil {
		return ClientInfo{}, &ValidationError{Op: OpClientInfo, Path: "$", Reason: err.Error()}
	}

	return info, nil
}

// ParseStatement validates a statement array. One bad element rejects
// the whole document.
func ParseStatement(body []byte) ([]StatementItem, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ValidationError{Op: OpStatement, Path: "$", Reason: "body is not valid json"}
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil, &ValidationError{Op: OpStatement, Path: "$", Reason: "expected array"}
	}

	elems := doc.Array()

	for i, v := range elems {
		if err := validateObject(v, statementItemSchema, indexPath("", i)); err != nil {
			err.Op = OpStatement
			return nil, err
		}
	}

	canonical := make([]map[string]any, 0, len(elems))
	for _, v := range elems {
		canonical = append(canonical, canonicalize(v, statementItemSchema))
	}

	items := []StatementItem{}
	if err := decode(canonical, &items); err != nil {
		return nil, &ValidationError{Op: OpStatement, Path: "$", Reason: err.Error()}
	}

	return items, nil
}

// canonicalize renames a validated object's fields to their canonical
// names. Fields outside the schema are dropped and absent or null
// optional fields stay absent.
func canonicalize(obj gjson.Result, schema []field) map[string]any {
	out := make(map[string]any, len(schema))

	for _, f := range schema {
		v := obj.Get(f.wire)
		if !present(v) {
			continue
		}

		switch f.kind {
		case kindString:
			out[f.name] = v.String()
		case kindInt:
			out[f.name] = v.Int()
		case kindBool:
			out[f.name] = v.Bool()
		case kindStrings:
			out[f.name] = stringsOf(v)
		case kindObjects:
			elems := []map[string]any{}
			for _, e := range v.Array() {
				elems = append(elems, canonicalize(e, f.elem))
			}
			out[f.name] = elems
		}
	}

	return out
}

func decode(canonical any, v any) error {
	bs, err := json.Marshal(canonical)
	if err != nil {
		return err
	}
	return json.Unmarshal(bs, v)
}

func validateObject(obj gjson.Result, schema []field, path string) *ValidationError {
	if !obj.IsObject() {
		return &ValidationError{Path: orRoot(path), Reason: "expected object"}
	}

	for _, f := range schema {
		p := fieldPath(path, f.wire)
		v := obj.Get(f.wire)

		if !present(v) {
			if f.required {
				return &ValidationError{Path: p, Reason: "required field is missing"}
			}
			continue
		}

		if err := validateValue(v, f, p); err != nil {
			return err
		}
	}

	return nil
}

func validateValue(v gjson.Result, f field, path string) *ValidationError {
	mismatch := func(p string, got gjson.Result, want string) *ValidationError {
		return &ValidationError{Path: p, Reason: fmt.Sprintf("expected %s, got %s", want, typeName(got))}
	}

	switch f.kind {
	case kindString:
		if v.Type != gjson.String {
			return mismatch(path, v, f.kind.String())
		}
	case kindInt:
		if !isInteger(v) {
			return mismatch(path, v, f.kind.String())
		}
	case kindBool:
		if !v.IsBool() {
			return mismatch(path, v, f.kind.String())
		}
	case kindStrings:
		if !v.IsArray() {
			return mismatch(path, v, f.kind.String())
		}
		for i, e := range v.Array() {
			if e.Type != gjson.String {
				return mismatch(indexPath(path, i), e, "string")
			}
		}
	case kindObjects:
		if !v.IsArray() {
			return mismatch(path, v, f.kind.String())
		}
		for i, e := range v.Array() {
			if err := validateObject(e, f.elem, indexPath(path, i)); err != nil {
				return err
			}
		}
	}

	return nil
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

// isInteger accepts JSON numbers with an integral value, so 1 and 1.0
// pass while 1.5 and "1" are rejected.
func isInteger(v gjson.Result) bool {
	if v.Type != gjson.Number {
		return false
	}
	if _, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
		return true
	}
	return v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < math.MaxInt64
}

func typeName(v gjson.Result) string {
	switch {
	case v.IsArray():
		return "array"
	case v.IsObject():
		return "object"
	case v.IsBool():
		return "boolean"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Null:
		return "null"
	}
	return "unknown"
}

func fieldPath(parent, name string) string {
	if len(parent) == 0 {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

func orRoot(path string) string {
	if len(path) == 0 {
		return "$"
	}
	return path
}

func stringsOf(v gjson.Result) []string {
	out := []string{}
	for _, e := range v.Array() {
		out = append(out, e.String())
	}
	return out
}
