package lower

// corePreludeSource defines the always-present runtime support every
// lowered program needs regardless of contract instrumentation: Result and
// Option values are plain `{tag, ...}` records built and consumed by their
// four constructors, `__extend` backs struct-literal copy-extend (`..base`)
// syntax, `__range` backs integer range expressions, and `__unwrap` backs
// both explicit Result/Option unwrapping and the `?` operator.
const corePreludeSource = `function __clone(v) {
  if (Array.isArray(v)) return v.map(__clone);
  if (v !== null && typeof v === "object") {
    const out = {};
    for (const k of Object.keys(v)) out[k] = __clone(v[k]);
    return out;
  }
  return v;
}
function __extend(base, fields) {
  return Object.assign({}, base, fields);
}
function __range(lo, hi) {
  const out = [];
  for (let i = lo; i < hi; i++) out.push(i);
  return out;
}
function Ok(value) { return { tag: "Ok", value: value }; }
function Err(error) { return { tag: "Err", error: error }; }
function isOk(r) { return r.tag === "Ok"; }
function isErr(r) { return r.tag === "Err"; }
function Some(value) { return { tag: "Some", value: value }; }
const None = { tag: "None" };
function isSome(o) { return o.tag === "Some"; }
function isNone(o) { return o.tag === "None"; }
function __unwrap(r) {
  if (r.tag === "Ok" || r.tag === "Some") return r.value;
  if (r.tag === "None") throw new Error("unwrap of None");
  throw new Error("unwrap of Err: " + JSON.stringify(r.error));
}
`

// guardPreludeSource is appended only when the lowering options call for
// runtime contract instrumentation (a violated
// requires/ensures/invariant throws a plain Error carrying the clause kind
// and its line and column). The clause's source text is not included, and
// the file argument the guard calls pass is empty.
const guardPreludeSource = `function __contractFail(kind, clause, file, line, column) {
  throw new Error(kind + " failed: " + clause + " at " + file + ":" + line + ":" + column);
}
function __requires(ok, clause, file, line, column) {
  if (!ok) __contractFail("requires", clause, file, line, column);
}
function __ensures(ok, clause, file, line, column) {
  if (!ok) __contractFail("ensures", clause, file, line, column);
}
function __invariant(ok, clause, file, line, column) {
  if (!ok) __contractFail("invariant", clause, file, line, column);
}
`

func (e *emitter) writePrelude() {
	e.write(corePreludeSource)
	if e.opts.emitsGuards() {
		e.write(guardPreludeSource)
	}
	e.write("\n")
}
