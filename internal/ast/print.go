package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a statement list back to RS source text. It is used by
// `retroscript parse`, `retroscript run --dump-ast` and by the
// round-trip property tests (spec §8): tokenizing Print(stmts) and
// re-parsing must yield an equivalent tree.
func Print(stmts []Statement) string {
	var sb strings.Builder
	for _, s := range stmts {
		printStmt(&sb, s, 0)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func printBlock(sb *strings.Builder, b *Block, depth int) {
	printBlockBody(sb, b, depth)
	sb.WriteString("\n")
}

// printBlockBody writes a block without the trailing newline, so that
// `else`/`catch` can follow the closing brace on the same line.
func printBlockBody(sb *strings.Builder, b *Block, depth int) {
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		printStmt(sb, s, depth+1)
	}
	indent(sb, depth)
	sb.WriteString("}")
}

func printStmt(sb *strings.Builder, s Statement, depth int) {
	indent(sb, depth)
	switch n := s.(type) {
	case *Set:
		fmt.Fprintf(sb, "set $%s = %s\n", n.Name, printExpr(n.Value))
	case *Print:
		kw := "print"
		if n.IsLog {
			kw = "log"
		}
		fmt.Fprintf(sb, "%s %s\n", kw, printExpr(n.Target))
	case *If:
		fmt.Fprintf(sb, "if %s ", printExpr(n.Condition))
		if len(n.Else.Statements) > 0 {
			printBlockBody(sb, n.Then, depth)
			sb.WriteString(" else ")
			printBlock(sb, n.Else, depth)
		} else {
			printBlock(sb, n.Then, depth)
		}
	case *Loop:
		fmt.Fprintf(sb, "loop %s ", printExpr(n.Count))
		printBlock(sb, n.Body, depth)
	case *While:
		fmt.Fprintf(sb, "while %s ", printExpr(n.Condition))
		printBlock(sb, n.Body, depth)
	case *ForEach:
		fmt.Fprintf(sb, "foreach $%s in %s ", n.Var, printExpr(n.Iter))
		printBlock(sb, n.Body, depth)
	case *Break:
		sb.WriteString("break\n")
	case *Continue:
		sb.WriteString("continue\n")
	case *Return:
		if n.Value == nil {
			sb.WriteString("return\n")
		} else {
			fmt.Fprintf(sb, "return %s\n", printExpr(n.Value))
		}
	case *FunctionDef:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = "$" + p
		}
		fmt.Fprintf(sb, "def %s(%s) ", n.Name, strings.Join(params, ", "))
		printBlock(sb, n.Body, depth)
	case *Call:
		fmt.Fprintf(sb, "call %s %s\n", n.Name, joinExprs(n.Args))
	case *TryCatch:
		sb.WriteString("try ")
		printBlockBody(sb, n.Body, depth)
		fmt.Fprintf(sb, " catch $%s ", n.ErrName)
		printBlock(sb, n.Handler, depth)
	case *On:
		fmt.Fprintf(sb, "on %s ", n.EventName)
		printBlock(sb, n.Body, depth)
	case *Emit:
		fmt.Fprintf(sb, "emit %s %s\n", n.EventName, joinKV(n.Payload))
	case *Launch:
		fmt.Fprintf(sb, "launch %s with %s\n", printExpr(n.App), joinKV(n.Params))
	case *Close:
		sb.WriteString("close")
		if n.Target != nil {
			fmt.Fprintf(sb, " %s", printExpr(n.Target))
		}
		sb.WriteString("\n")
	case *Wait:
		fmt.Fprintf(sb, "wait %s\n", printExpr(n.Duration))
	case *Focus:
		fmt.Fprintf(sb, "focus %s\n", printExpr(n.Target))
	case *Minimize:
		fmt.Fprintf(sb, "minimize %s\n", printExpr(n.Target))
	case *Maximize:
		fmt.Fprintf(sb, "maximize %s\n", printExpr(n.Target))
	case *Write:
		fmt.Fprintf(sb, "write %s to %s\n", printExpr(n.Content), printExpr(n.Path))
	case *Read:
		fmt.Fprintf(sb, "read %s into $%s\n", printExpr(n.Path), n.VarName)
	case *Mkdir:
		fmt.Fprintf(sb, "mkdir %s\n", printExpr(n.Path))
	case *Delete:
		fmt.Fprintf(sb, "delete %s\n", printExpr(n.Path))
	case *Alert:
		fmt.Fprintf(sb, "alert %s\n", printExpr(n.Message))
	case *Confirm:
		fmt.Fprintf(sb, "confirm %s", printExpr(n.Message))
		if n.VarName != "" {
			fmt.Fprintf(sb, " into $%s", n.VarName)
		}
		sb.WriteString("\n")
	case *Prompt:
		fmt.Fprintf(sb, "prompt %s", printExpr(n.Message))
		if n.Default != nil {
			fmt.Fprintf(sb, " default %s", printExpr(n.Default))
		}
		if n.VarName != "" {
			fmt.Fprintf(sb, " into $%s", n.VarName)
		}
		sb.WriteString("\n")
	case *Notify:
		fmt.Fprintf(sb, "notify %s\n", printExpr(n.Message))
	case *Play:
		fmt.Fprintf(sb, "play %s %s\n", printExpr(n.Source), joinKV(n.Params))
	case *Stop:
		sb.WriteString("stop")
		if n.Source != nil {
			fmt.Fprintf(sb, " %s", printExpr(n.Source))
		}
		sb.WriteString("\n")
	case *Video:
		fmt.Fprintf(sb, "video %s %s\n", printExpr(n.Source), joinKV(n.Params))
	case *Command:
		fmt.Fprintf(sb, "%s %s\n", n.Name, joinExprs(n.Args))
	default:
		fmt.Fprintf(sb, "<?unknown statement?>\n")
	}
}

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = printExpr(e)
	}
	return strings.Join(parts, " ")
}

func joinKV(kvs []KeyValue) string {
	parts := make([]string, len(kvs))
	for i, kv := range kvs {
		parts[i] = fmt.Sprintf("%s=%s", kv.Key, printExpr(kv.Value))
	}
	return strings.Join(parts, " ")
}

func printExpr(e Expression) string {
	switch n := e.(type) {
	case *Literal:
		return printLiteral(n.Value)
	case *Variable:
		return "$" + n.Name
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", printExpr(n.Left), n.Op, printExpr(n.Right))
	case *Unary:
		return fmt.Sprintf("(%s%s)", n.Op, printExpr(n.Operand))
	case *Array:
		return "[" + joinExprs(n.Elements) + "]"
	case *Object:
		parts := make([]string, len(n.Keys))
		for i, k := range n.Keys {
			parts[i] = fmt.Sprintf("%s: %s", k, printExpr(n.Values[i]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Member:
		return fmt.Sprintf("%s.%s", printExpr(n.Object), n.Name)
	case *Index:
		return fmt.Sprintf("%s[%s]", printExpr(n.Collection), printExpr(n.Index))
	case *Grouping:
		return "(" + printExpr(n.Inner) + ")"
	case *Call:
		return fmt.Sprintf("(call %s %s)", n.Name, joinExprs(n.Args))
	case *InterpolatedString:
		var sb strings.Builder
		for _, p := range n.Parts {
			if p.Expr != nil {
				sb.WriteString(printExpr(p.Expr))
			} else {
				sb.WriteString(p.Text)
			}
		}
		return sb.String()
	default:
		return "<?>"
	}
}

func printLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
