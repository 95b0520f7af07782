/*
Package runtime implements the breadth-first exploration engine.

Each call to Engine.Simulate builds the frontier of depth d+1 from the frontier
of depth d by applying every matching transition of every configuration, in
frontier order and then transition table order. The first of these events ends
the run:

  - a configuration in the accept state is dequeued, or a transition targets it;
  - a next frontier reaches the step limit (checked after each append);
  - a next frontier is empty (rejection);
  - the depth limit is exhausted.

Traces sample the first configuration of each level and drop repeated renderings.
*/
package runtime
