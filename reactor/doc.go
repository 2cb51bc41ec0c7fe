// Package reactor wires eventloop, httpwire, vhost, and cgiexec together
// into the three concrete event sources the server needs: Listener,
// Connection, and ControlInput (§3, §4.3–§4.8).
package reactor
