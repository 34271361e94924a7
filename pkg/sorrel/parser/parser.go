// Package parser builds sorrel syntax trees from a token stream.
//
// The parser is a recursive-descent precedence cascade with a single
// buffered token of lookahead and no backtracking: every level of the
// grammar is one method calling the next-tighter level, and expect is
// the only checkpoint primitive. The first error aborts the parse; no
// partial tree is ever returned.
package parser

import (
	"github.com/sorrel-lang/sorrel/pkg/sorrel/ast"
	serrors "github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
)

// Parser represents the parser
type Parser struct {
	l      *lexer.Lexer
	cur    lexer.Token
	primed bool
}

// New creates a new parser instance reading from l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// prime loads the first token into the lookahead buffer.
func (p *Parser) prime() error {
	if p.primed {
		return nil
	}
	p.primed = true
	return p.advance()
}

// advance pulls the next token from the lexer into the buffer.
func (p *Parser) advance() error {
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// curIs reports whether the buffered token has the given type.
func (p *Parser) curIs(t lexer.TokenType) bool {
	return p.cur.Type == t
}

// expect is the single checkpoint primitive: if the buffered token has
// the expected type it is consumed and returned, otherwise the parse
// fails with an expected/got error at the current position.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if p.cur.Type != t {
		return lexer.Token{}, p.expected(describeToken(t))
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// skipSeparators consumes any run of newline and semicolon tokens.
func (p *Parser) skipSeparators() error {
	for p.curIs(lexer.NEWLINE) || p.curIs(lexer.SEMICOLON) {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// skipNewlines consumes any run of newline tokens.
func (p *Parser) skipNewlines() error {
	for p.curIs(lexer.NEWLINE) {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// Entry points
// ============================================================================

// Parse parses a single top-level expression and requires the input to
// end after it.
func (p *Parser) Parse() (ast.Expression, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	if err := p.skipSeparators(); err != nil {
		return nil, err
	}

	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	if err := p.skipSeparators(); err != nil {
		return nil, err
	}
	if !p.curIs(lexer.EOF) {
		return nil, p.unexpected()
	}
	return expr, nil
}

// ParseBlock parses a sequence of statements separated by newlines or
// semicolons, running to the end of input. At least one statement is
// required: an empty block is invalid.
func (p *Parser) ParseBlock() (*ast.Block, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	if err := p.skipSeparators(); err != nil {
		return nil, err
	}

	block := &ast.Block{Token: p.cur}
	for !p.curIs(lexer.EOF) {
		stmt, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		block.Expressions = append(block.Expressions, stmt)

		if !p.curIs(lexer.EOF) && !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.SEMICOLON) {
			return nil, p.unexpected()
		}
		if err := p.skipSeparators(); err != nil {
			return nil, err
		}
	}

	if len(block.Expressions) == 0 {
		return nil, p.errorAt(p.cur, "PARSE-0004", nil)
	}
	return block, nil
}

// ParseFunction parses a single function definition.
func (p *Parser) ParseFunction() (*ast.FunctionDefinition, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	if err := p.skipSeparators(); err != nil {
		return nil, err
	}
	fn, err := p.parseFunctionDefinition()
	if err != nil {
		return nil, err
	}
	if err := p.skipSeparators(); err != nil {
		return nil, err
	}
	if !p.curIs(lexer.EOF) {
		return nil, p.unexpected()
	}
	return fn, nil
}

// ParseClass parses a single class definition.
func (p *Parser) ParseClass() (*ast.ClassDefinition, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	if err := p.skipSeparators(); err != nil {
		return nil, err
	}
	class, err := p.parseClassDefinition()
	if err != nil {
		return nil, err
	}
	if err := p.skipSeparators(); err != nil {
		return nil, err
	}
	if !p.curIs(lexer.EOF) {
		return nil, p.unexpected()
	}
	return class, nil
}

// ParseProgram parses a whole program: a sequence of class definitions.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}

	program := &ast.Program{}
	for {
		if err := p.skipSeparators(); err != nil {
			return nil, err
		}
		if p.curIs(lexer.EOF) {
			return program, nil
		}
		class, err := p.parseClassDefinition()
		if err != nil {
			return nil, err
		}
		program.Classes = append(program.Classes, class)
	}
}

// ============================================================================
// Precedence cascade
// ============================================================================

// parseAssignment handles the loosest level:
//
//	assignment := whileExpr ( '=' assignment )?
//
// The left-hand side of '=' must be a symbol, an accessor, or a call
// whose callee and arguments are all symbols; the last form is
// reinterpreted as a function definition and requires a braced body.
// A leading 'var' marks the assignment as a declaration.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	if p.curIs(lexer.VAR) {
		return p.parseVarDeclaration()
	}

	left, err := p.parseWhileExpr()
	if err != nil {
		return nil, err
	}

	if !p.curIs(lexer.ASSIGN) {
		return left, nil
	}
	assignTok := p.cur

	switch target := left.(type) {
	case *ast.Identifier, *ast.Accessor:
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Token: assignTok, Target: left, Value: value}, nil

	case *ast.FunctionCall:
		name, params, ok := callAsDefinition(target)
		if !ok {
			return nil, p.errorAt(assignTok, "PARSE-0003", nil)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.curIs(lexer.LBRACE) {
			return nil, p.errorAt(p.cur, "PARSE-0006", map[string]any{
				"Name":   name.Value,
				"Params": paramNames(params),
			})
		}
		body, err := p.parseBracedBlock()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionDefinition{
			Token:      name.Token,
			Name:       name,
			Parameters: params,
			Body:       body,
		}, nil

	default:
		return nil, p.errorAt(assignTok, "PARSE-0003", nil)
	}
}

// parseVarDeclaration parses 'var name = value'.
func (p *Parser) parseVarDeclaration() (ast.Expression, error) {
	if err := p.advance(); err != nil { // consume 'var'
		return nil, err
	}

	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	assignTok, err := p.expect(lexer.ASSIGN)
	if err != nil {
		return nil, err
	}
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Token: assignTok, Target: name, Value: value, IsDeclaration: true}, nil
}

// parseWhileExpr handles loops:
//
//	whileExpr := conditional ( 'while' '(' assignment ')' '{' block '}' )*
//
// A bare loop needs no prior operand. When a loop follows an operand,
// the loop node replaces it: the node carries only condition and body.
func (p *Parser) parseWhileExpr() (ast.Expression, error) {
	var left ast.Expression
	if !p.curIs(lexer.WHILE) {
		operand, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		left = operand
	}

	for p.curIs(lexer.WHILE) {
		loop, err := p.parseWhileLoop()
		if err != nil {
			return nil, err
		}
		left = loop
	}
	return left, nil
}

func (p *Parser) parseWhileLoop() (*ast.WhileExpression, error) {
	whileTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBracedBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileExpression{Token: whileTok, Condition: cond, Body: body}, nil
}

// parseConditional handles the postfix 'if':
//
//	conditional := relational ( 'if' '(' relational ')' ('else'? relational)? )*
//
// The already-parsed operand becomes the then-branch; the expression
// after the condition (with or without an introducing 'else') is the
// alternative. Wrapping is left-to-right, so chains nest leftward.
func (p *Parser) parseConditional() (ast.Expression, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}

	for p.curIs(lexer.IF) {
		ifTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.LPAREN); err != nil {
			return nil, err
		}
		cond, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}

		var alt ast.Expression
		if p.curIs(lexer.ELSE) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			alt, err = p.parseRelational()
			if err != nil {
				return nil, err
			}
		} else if startsExpression(p.cur.Type) {
			alt, err = p.parseRelational()
			if err != nil {
				return nil, err
			}
		}

		left = &ast.ConditionalExpression{Token: ifTok, Condition: cond, Then: left, Else: alt}
	}
	return left, nil
}

// relationalOps are the operators of the relational grammar level.
var relationalOps = map[lexer.TokenType]bool{
	lexer.EQ:     true,
	lexer.NOT_EQ: true,
	lexer.LT:     true,
	lexer.LTE:    true,
	lexer.GT:     true,
	lexer.GTE:    true,
	lexer.AND:    true,
	lexer.OR:     true,
}

// parseRelational handles comparisons and boolean logic:
//
//	relational := addSub ( relOp addSub )*
//
// Exactly two operands produce a plain binary node; three or more
// produce a RelationalExpression carrying the whole chain.
func (p *Parser) parseRelational() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if !relationalOps[p.cur.Type] {
		return left, nil
	}

	operators := []lexer.Token{}
	operands := []ast.Expression{left}
	for relationalOps[p.cur.Type] {
		operators = append(operators, p.cur)
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}

	if len(operators) == 1 {
		op := operators[0]
		return &ast.BinaryExpression{
			Token:    op,
			Operator: op.Literal,
			OpType:   op.Type,
			Left:     operands[0],
			Right:    operands[1],
		}, nil
	}
	return &ast.RelationalExpression{
		Token:     operators[0],
		Operators: operators,
		Operands:  operands,
	}, nil
}

// parseAdditive handles '+' and '-', left-associative.
func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Token:    op,
			Operator: op.Literal,
			OpType:   op.Type,
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

// parseMultiplicative handles '*', '/', and '%', left-associative.
func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.curIs(lexer.TIMES) || p.curIs(lexer.DIV) || p.curIs(lexer.MODULO) {
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Token:    op,
			Operator: op.Literal,
			OpType:   op.Type,
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

// parseUnary handles prefix '-' and '!'.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.curIs(lexer.MINUS) || p.curIs(lexer.NOT) {
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Token: op, Operator: op.Literal, Operand: operand}, nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseAccessors(primary)
}

// parsePrimary handles the tightest level: constants, references,
// grouped expressions, array and map literals, let bindings, and
// object construction.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.INT:
		return p.literal(ast.IntegerLiteral, p.cur.Literal)
	case lexer.DECIMAL:
		return p.literal(ast.DecimalLiteral, p.cur.Literal)
	case lexer.STRING:
		return p.literal(ast.StringLiteral, unquote(p.cur.Literal))
	case lexer.TRUE, lexer.FALSE:
		return p.literal(ast.BooleanLiteral, p.cur.Literal)
	case lexer.NULL:
		return p.literal(ast.NullLiteral, p.cur.Literal)

	case lexer.IDENT, lexer.THIS, lexer.SUPER:
		ident := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ident, nil

	case lexer.LPAREN:
		return p.parseGrouped()
	case lexer.LBRACKET:
		return p.parseArray()
	case lexer.LBRACE:
		return p.parseMap()
	case lexer.LET:
		return p.parseLet()
	case lexer.NEW:
		return p.parseNew()

	case lexer.FOR, lexer.TO, lexer.RETURN:
		return nil, p.errorAt(p.cur, "PARSE-0005", map[string]any{"Word": p.cur.Literal})

	case lexer.EOF:
		return nil, p.errorAt(p.cur, "PARSE-0007", nil)

	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) literal(kind ast.LiteralKind, value string) (ast.Expression, error) {
	lit := &ast.Literal{Token: p.cur, Kind: kind, Value: value}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseGrouped() (ast.Expression, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseArray() (ast.Expression, error) {
	arr := &ast.Array{Token: p.cur}
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	for !p.curIs(lexer.RBRACKET) {
		elem, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, elem)

		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if !p.curIs(lexer.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return arr, nil
}

func (p *Parser) parseMap() (ast.Expression, error) {
	m := &ast.Map{Token: p.cur}
	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	for !p.curIs(lexer.RBRACE) {
		var key ast.Expression
		switch p.cur.Type {
		case lexer.IDENT:
			key = &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
			if err := p.advance(); err != nil {
				return nil, err
			}
		case lexer.STRING:
			var err error
			key, err = p.literal(ast.StringLiteral, unquote(p.cur.Literal))
			if err != nil {
				return nil, err
			}
		default:
			return nil, p.expected("a map key")
		}

		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, ast.MapEntry{Key: key, Value: value})

		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if !p.curIs(lexer.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return m, nil
}

// parseLet handles 'let' bindings:
//
//	let := 'let' binding (',' binding)* 'in' body
//	binding := ident (':' type)? '=' assignment
func (p *Parser) parseLet() (ast.Expression, error) {
	let := &ast.Let{Token: p.cur}
	if err := p.advance(); err != nil { // consume 'let'
		return nil, err
	}

	for {
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		binding := ast.LetBinding{Name: &ast.Identifier{Token: nameTok, Value: nameTok.Literal}}

		if p.curIs(lexer.COLON) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			typeTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			binding.Type = &ast.Identifier{Token: typeTok, Value: typeTok.Literal}
		}

		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		binding.Value, err = p.parseAssignment()
		if err != nil {
			return nil, err
		}
		let.Bindings = append(let.Bindings, binding)

		if !p.curIs(lexer.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	body, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	let.Body = body
	return let, nil
}

// parseNew handles object construction: 'new' ident '(' args ')'.
func (p *Parser) parseNew() (ast.Expression, error) {
	newTok := p.cur
	if err := p.advance(); err != nil { // consume 'new'
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if !p.curIs(lexer.LPAREN) {
		return nil, p.expected("'('")
	}
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	return &ast.NewExpression{
		Token:     newTok,
		Class:     &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
		Arguments: args,
	}, nil
}

// parseAccessors applies postfix call, index, and member operations
// left-to-right:
//
//	accessors := ( '(' args ')' | '@' primary | '.' ident )*
func (p *Parser) parseAccessors(left ast.Expression) (ast.Expression, error) {
	for {
		switch p.cur.Type {
		case lexer.LPAREN:
			callTok := p.cur
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			left = &ast.FunctionCall{Token: callTok, Callee: left, Arguments: args}

		case lexer.DOT:
			dotTok := p.cur
			if err := p.advance(); err != nil {
				return nil, err
			}
			memberTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			left = &ast.Accessor{
				Token:    dotTok,
				Operator: lexer.DOT,
				Object:   left,
				Member:   &ast.Identifier{Token: memberTok, Value: memberTok.Literal},
			}

		case lexer.AT:
			atTok := p.cur
			if err := p.advance(); err != nil {
				return nil, err
			}
			member, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			left = &ast.Accessor{
				Token:    atTok,
				Operator: lexer.AT,
				Object:   left,
				Member:   member,
			}

		default:
			return left, nil
		}
	}
}

// parseArguments parses a parenthesized, comma-separated argument list.
// The current token must be '('.
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	args := []ast.Expression{}
	for !p.curIs(lexer.RPAREN) {
		arg, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if !p.curIs(lexer.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// parseBracedBlock parses '{' block '}' where block is a newline- or
// semicolon-separated statement sequence with at least one statement.
func (p *Parser) parseBracedBlock() (*ast.Block, error) {
	openTok, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}
	if err := p.skipSeparators(); err != nil {
		return nil, err
	}

	block := &ast.Block{Token: openTok}
	for !p.curIs(lexer.RBRACE) {
		if p.curIs(lexer.EOF) {
			return nil, p.expected("'}'")
		}
		stmt, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		block.Expressions = append(block.Expressions, stmt)

		if !p.curIs(lexer.RBRACE) && !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.SEMICOLON) {
			return nil, p.unexpected()
		}
		if err := p.skipSeparators(); err != nil {
			return nil, err
		}
	}

	if len(block.Expressions) == 0 {
		return nil, p.errorAt(openTok, "PARSE-0004", nil)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// ============================================================================
// Definitions
// ============================================================================

// parseFunctionDefinition parses:
//
//	funcDef := 'private'? 'override'? 'func' ident '(' params ')' (':' type)? '=' body
//	body    := '{' block '}' | assignment
//
// A bare expression after '=' is a single-expression body and is
// wrapped in a one-element block.
func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	fn := &ast.FunctionDefinition{}

	if p.curIs(lexer.PRIVATE) {
		fn.Private = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.curIs(lexer.OVERRIDE) {
		fn.Override = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	funcTok, err := p.expect(lexer.FUNC)
	if err != nil {
		return nil, err
	}
	fn.Token = funcTok

	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	fn.Name = &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	fn.Parameters, err = p.parseParameterList()
	if err != nil {
		return nil, err
	}

	if p.curIs(lexer.COLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		typeTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		fn.ReturnType = &ast.Identifier{Token: typeTok, Value: typeTok.Literal}
	}

	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	if p.curIs(lexer.LBRACE) {
		fn.Body, err = p.parseBracedBlock()
		if err != nil {
			return nil, err
		}
		return fn, nil
	}

	bodyTok := p.cur
	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	fn.Body = &ast.Block{Token: bodyTok, Expressions: []ast.Expression{expr}}
	return fn, nil
}

// parseClassDefinition parses:
//
//	classDef := 'class' ident '(' params ')' ('extends' ident)? '{' (property | funcDef)* '}'
func (p *Parser) parseClassDefinition() (*ast.ClassDefinition, error) {
	classTok, err := p.expect(lexer.CLASS)
	if err != nil {
		return nil, err
	}

	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	class := &ast.ClassDefinition{
		Token: classTok,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
	}

	class.Parameters, err = p.parseParameterList()
	if err != nil {
		return nil, err
	}

	if p.curIs(lexer.EXTENDS) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		superTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		class.Superclass = &ast.Identifier{Token: superTok, Value: superTok.Literal}
	}

	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	for {
		if err := p.skipSeparators(); err != nil {
			return nil, err
		}
		if p.curIs(lexer.RBRACE) {
			break
		}

		private := false
		if p.curIs(lexer.PRIVATE) {
			private = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		switch p.cur.Type {
		case lexer.VAR, lexer.FINAL:
			prop, err := p.parseProperty()
			if err != nil {
				return nil, err
			}
			prop.Private = private
			class.Properties = append(class.Properties, *prop)

		case lexer.OVERRIDE, lexer.FUNC:
			fn, err := p.parseMemberFunction(private)
			if err != nil {
				return nil, err
			}
			class.Functions = append(class.Functions, fn)

		default:
			return nil, p.expected("a property or function declaration")
		}
	}

	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return class, nil
}

// parseProperty parses a class property:
//
//	property := ('var' | 'final') ident ':' type ('=' assignment)?
func (p *Parser) parseProperty() (*ast.Property, error) {
	prop := &ast.Property{Final: p.curIs(lexer.FINAL)}
	if err := p.advance(); err != nil { // consume 'var' or 'final'
		return nil, err
	}

	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	prop.Name = &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	prop.Type = &ast.Identifier{Token: typeTok, Value: typeTok.Literal}

	if p.curIs(lexer.ASSIGN) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		prop.Value, err = p.parseAssignment()
		if err != nil {
			return nil, err
		}
	}
	return prop, nil
}

// parseMemberFunction parses a function declared inside a class body.
func (p *Parser) parseMemberFunction(private bool) (*ast.FunctionDefinition, error) {
	fn, err := p.parseFunctionDefinition()
	if err != nil {
		return nil, err
	}
	fn.Private = fn.Private || private
	return fn, nil
}

// parseParameterList parses '(' (ident ':' type (',' ident ':' type)*)? ')'.
func (p *Parser) parseParameterList() ([]ast.Parameter, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	params := []ast.Parameter{}
	for !p.curIs(lexer.RPAREN) {
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		typeTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Parameter{
			Name: &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
			Type: &ast.Identifier{Token: typeTok, Value: typeTok.Literal},
		})

		if !p.curIs(lexer.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// ============================================================================
// Helpers
// ============================================================================

// callAsDefinition reinterprets a call whose callee is a symbol and
// whose arguments are all symbols as a function definition head.
func callAsDefinition(call *ast.FunctionCall) (*ast.Identifier, []ast.Parameter, bool) {
	name, ok := call.Callee.(*ast.Identifier)
	if !ok {
		return nil, nil, false
	}
	params := make([]ast.Parameter, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		ident, ok := arg.(*ast.Identifier)
		if !ok {
			return nil, nil, false
		}
		params = append(params, ast.Parameter{Name: ident})
	}
	return name, params, true
}

func paramNames(params []ast.Parameter) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += p.Name.Value
	}
	return out
}

// startsExpression reports whether a token can begin an expression.
func startsExpression(t lexer.TokenType) bool {
	switch t {
	case lexer.IDENT, lexer.INT, lexer.DECIMAL, lexer.STRING,
		lexer.TRUE, lexer.FALSE, lexer.NULL,
		lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE,
		lexer.MINUS, lexer.NOT,
		lexer.LET, lexer.NEW, lexer.THIS, lexer.SUPER:
		return true
	}
	return false
}

// describeToken renders a token type for expected/got messages.
func describeToken(t lexer.TokenType) string {
	switch t {
	case lexer.IDENT:
		return "an identifier"
	case lexer.NEWLINE:
		return "a newline"
	case lexer.EOF:
		return "end of input"
	case lexer.ASSIGN:
		return "'='"
	case lexer.LPAREN:
		return "'('"
	case lexer.RPAREN:
		return "')'"
	case lexer.LBRACE:
		return "'{'"
	case lexer.RBRACE:
		return "'}'"
	case lexer.LBRACKET:
		return "'['"
	case lexer.RBRACKET:
		return "']'"
	case lexer.COMMA:
		return "','"
	case lexer.COLON:
		return "':'"
	case lexer.DOT:
		return "'.'"
	case lexer.CLASS:
		return "'class'"
	case lexer.FUNC:
		return "'func'"
	case lexer.IN:
		return "'in'"
	}
	return "'" + t.String() + "'"
}

// got renders the buffered token for error messages.
func (p *Parser) got() string {
	if p.cur.Type == lexer.EOF {
		return "end of input"
	}
	if p.cur.Type == lexer.NEWLINE {
		return "newline"
	}
	return p.cur.Literal
}

// expected fails with an expected/got error at the current token.
func (p *Parser) expected(what string) *serrors.Error {
	return p.errorAt(p.cur, "PARSE-0001", map[string]any{
		"Expected": what,
		"Got":      p.got(),
	})
}

// unexpected fails with an unexpected-token error at the current token,
// adding a "did you mean" hint when the token looks like a keyword typo.
func (p *Parser) unexpected() *serrors.Error {
	if p.curIs(lexer.EOF) {
		return p.errorAt(p.cur, "PARSE-0007", nil)
	}
	err := p.errorAt(p.cur, "PARSE-0002", map[string]any{"Token": p.got()})
	if p.curIs(lexer.IDENT) {
		if suggestion := serrors.FindClosestMatch(p.cur.Literal, serrors.Keywords); suggestion != "" {
			err.Hints = append(err.Hints, "Did you mean '"+suggestion+"'?")
		}
	}
	return err
}

// errorAt builds a catalog error positioned at the given token.
func (p *Parser) errorAt(tok lexer.Token, code string, data map[string]any) *serrors.Error {
	err := serrors.NewWithPosition(code, tok.Line, tok.Column, data)
	if name := p.l.Filename(); name != "" && name != "<input>" {
		err.File = name
	}
	return err
}

// unquote strips the surrounding quotes from a string token lexeme.
func unquote(lexeme string) string {
	if len(lexeme) >= 2 && lexeme[0] == '"' && lexeme[len(lexeme)-1] == '"' {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}
