package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var greetings = [...]string{
	"The town square is busy. Your house is still dark.",
	"Someone left a coffee on your doorstep. It is getting cold.",
	"Eleven achievements, zero of them yours. Yet.",
	"Your neighbours have been asking about you.",
	"An invite code is only eight letters. You could have typed it already.",
	"The mailman has three letters for you and nowhere to put them.",
	"Every citizen started outside the gate. Most of them came in.",
	"Your profile has no bio. That is a Writer badge going to waste.",
}

var (
	logoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb")).Bold(true)
	quoteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

func printHelp(w io.Writer) {
	commands := []struct{ cmd, desc string }{
		{"orkadia", "Open the interactive client"},
		{"orkadia login", "Sign in through the browser"},
		{"orkadia logout", "Clear your session"},
		{"orkadia whoami", "Show the signed-in citizen"},
		{"orkadia theme [name]", "Show or change the theme"},
		{"orkadia redeem <code>", "Use an invite code"},
		{"orkadia invites", "List your invite codes"},
		{"orkadia invite-new [max-uses]", "Issue a new invite code"},
		{"orkadia send <user> <text>", "Send a private message"},
		{"orkadia block <user> [reason]", "Stop a citizen messaging you"},
		{"orkadia unblock <user>", "Lift a block"},
		{"orkadia version", "Show version"},
		{"orkadia help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  Commands:\n", logoStyle.Render("O R K A D I A"))
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", nameStyle.Render(fmt.Sprintf("%-30s", c.cmd)), dimStyle.Render(c.desc))
	}
	fmt.Fprintf(w, "\n  %s\n\n", dimStyle.Render("ORKADIA_STORE=sqlite runs against a local database"))
}

func printGreeting(w io.Writer) {
	msg := greetings[rand.IntN(len(greetings))]
	fmt.Fprintf(w, "\n%s\n\n%s\n\n%s\n\n",
		logoStyle.Render("ORKADIA"),
		quoteStyle.Render(msg),
		dimStyle.Render("To enter: orkadia login"),
	)
}
