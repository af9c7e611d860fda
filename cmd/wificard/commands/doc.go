// Package commands defines the wificard CLI and wires dependencies for subcommands.
//
// Commands
//
//   - payload    Print the escaped WiFi QR payload
//   - qr         Write the network's QR code as a PNG
//   - card       Render a printable card as PNG or JPG
//   - contrast   Evaluate a background color for the card
//
// # Implementation
//
// The root command builds the same card service the web server uses before
// any subcommand runs. With --redis, rendered QR codes are shared with the
// server's cache.
package commands
