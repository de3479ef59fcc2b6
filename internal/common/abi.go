package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var functionNameRegex = regexp.MustCompile(`^\w+$`)

// ConstructFunctionABI builds a callable method from a human readable signature such as
// "ownerOf(uint256 id) view returns (address)". Outputs are optional.
func ConstructFunctionABI(signature string) (*abi.Method, error) {
	name, params, rest, err := splitSignature(strings.TrimSpace(signature))
	if err != nil {
		return nil, err
	}

	inputs, err := parseParamsToAbiArguments(params)
	if err != nil {
		return nil, fmt.Errorf("failed to parse params to abi arguments '%s': %v", params, err)
	}

	mutability := "view"
	var outputs abi.Arguments
	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "view"), strings.HasPrefix(rest, "pure"):
			mutability = rest[:4]
			rest = strings.TrimSpace(rest[4:])
		case strings.HasPrefix(rest, "returns"):
			returned := strings.TrimSpace(strings.TrimPrefix(rest, "returns"))
			if !strings.HasPrefix(returned, "(") || !strings.HasSuffix(returned, ")") {
				return nil, fmt.Errorf("invalid returns clause in '%s'", signature)
			}
			outputs, err = parseParamsToAbiArguments(returned[1 : len(returned)-1])
			if err != nil {
				return nil, fmt.Errorf("failed to parse return values '%s': %v", returned, err)
			}
			rest = ""
		default:
			return nil, fmt.Errorf("unexpected '%s' in function signature", rest)
		}
	}

	function := abi.NewMethod(name, name, abi.Function, mutability, false, false, inputs, outputs)

	return &function, nil
}

// splitSignature separates "name(params) rest" honouring nested tuple parentheses.
func splitSignature(signature string) (name string, params string, rest string, err error) {
	open := strings.Index(signature, "(")
	if open <= 0 {
		return "", "", "", fmt.Errorf("invalid function signature format")
	}
	name = strings.TrimSpace(signature[:open])
	if !functionNameRegex.MatchString(name) {
		return "", "", "", fmt.Errorf("invalid function name '%s'", name)
	}
	depth := 0
	for i := open; i < len(signature); i++ {
		switch signature[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return name, signature[open+1 : i], strings.TrimSpace(signature[i+1:]), nil
			}
		}
	}
	return "", "", "", fmt.Errorf("unbalanced parentheses in function signature")
}

func parseParamsToAbiArguments(params string) (abi.Arguments, error) {
	paramList := splitParams(strings.TrimSpace(params))
	inputs := abi.Arguments{}
	for idx, param := range paramList {
		arg, err := parseParamToAbiArgument(param, fmt.Sprintf("%d", idx))
		if err != nil {
			return nil, fmt.Errorf("failed to parse param to arg '%s': %v", param, err)
		}
		inputs = append(inputs, *arg)
	}
	return inputs, nil
}

// splitParams splits a comma separated parameter list, ignoring commas inside tuples
func splitParams(params string) []string {
	var result []string
	depth := 0
	var current strings.Builder
	for _, r := range params {
		switch r {
		case ',':
			if depth == 0 {
				result = append(result, strings.TrimSpace(current.String()))
				current.Reset()
				continue
			}
		case '(':
			depth++
		case ')':
			depth--
		}
		current.WriteRune(r)
	}
	if strings.TrimSpace(current.String()) != "" {
		result = append(result, strings.TrimSpace(current.String()))
	}
	return result
}

func parseParamToAbiArgument(param string, fallbackName string) (*abi.Argument, error) {
	argName, paramType, err := getArgNameAndType(param, fallbackName)
	if err != nil {
		return nil, fmt.Errorf("failed to get arg name and type '%s': %v", param, err)
	}
	var argType abi.Type
	if isTuple(paramType) {
		argType, err = marshalTupleParamToArgumentType(paramType)
	} else {
		argType, err = abi.NewType(paramType, paramType, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse type '%s': %v", paramType, err)
	}
	return &abi.Argument{Name: argName, Type: argType}, nil
}

func getArgNameAndType(param string, fallbackName string) (name string, paramType string, err error) {
	if isTuple(param) {
		lastParenIndex := strings.LastIndex(param, ")")
		if lastParenIndex == -1 {
			return "", "", fmt.Errorf("invalid tuple format")
		}
		paramsEndIdx := lastParenIndex + 1
		if strings.HasPrefix(param[paramsEndIdx:], "[]") {
			paramsEndIdx += 2
		}
		if name = strings.TrimSpace(param[paramsEndIdx:]); name == "" {
			name = fallbackName
		}
		return name, param[:paramsEndIdx], nil
	}
	// drop data location keywords, they are not part of the type
	tokens := []string{}
	for _, token := range strings.Fields(param) {
		if token == "memory" || token == "calldata" || token == "storage" {
			continue
		}
		tokens = append(tokens, token)
	}
	switch len(tokens) {
	case 0:
		return "", "", fmt.Errorf("empty parameter")
	case 1:
		return fallbackName, tokens[0], nil
	default:
		return tokens[len(tokens)-1], strings.Join(tokens[:len(tokens)-1], " "), nil
	}
}

func isTuple(param string) bool {
	return strings.HasPrefix(param, "(")
}

func marshalTupleParamToArgumentType(paramType string) (abi.Type, error) {
	typ := "tuple"
	stripped := strings.TrimPrefix(paramType, "(")
	if strings.HasSuffix(stripped, "[]") {
		stripped = strings.TrimSuffix(stripped, "[]")
		typ = "tuple[]"
	}
	stripped = strings.TrimSuffix(stripped, ")")
	components, err := marshalParamArguments(stripped)
	if err != nil {
		return abi.Type{}, fmt.Errorf("failed to marshal tuple: %v", err)
	}
	return abi.NewType(typ, typ, components)
}

func marshalParamArguments(param string) ([]abi.ArgumentMarshaling, error) {
	components := []abi.ArgumentMarshaling{}
	for idx, p := range splitParams(param) {
		argName, paramType, err := getArgNameAndType(p, fmt.Sprintf("field%d", idx))
		if err != nil {
			return nil, fmt.Errorf("failed to get arg name and type '%s': %v", p, err)
		}
		if !isTuple(paramType) {
			components = append(components, abi.ArgumentMarshaling{Type: paramType, Name: argName})
			continue
		}
		typ := "tuple"
		inner := paramType
		if strings.HasSuffix(inner, "[]") {
			typ = "tuple[]"
			inner = strings.TrimSuffix(inner, "[]")
		}
		subComponents, err := marshalParamArguments(inner[1 : len(inner)-1])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tuple: %v", err)
		}
		components = append(components, abi.ArgumentMarshaling{
			Type:       typ,
			Name:       argName,
			Components: subComponents,
		})
	}
	return components, nil
}
