package main

import (
	"bytes"
	"log"
	"strings"

	sp "github.com/rdfsql/gosparql"
)

func main() {
	buf := &bytes.Buffer{}
	buf2 := &bytes.Buffer{}

	var mylog = sp.GetLogger()
	mylog.SetOutput(buf)
	mylog.Info("Hello I am default")
	mylog.Info("Hello II am default")
	mylog.Debug("Default I am debug NOT SHOWN")
	_ = mylog.SetLogLevel("debug")
	mylog.Debug("Default II am debug TO SHOW")

	var testlog = sp.CreateDefaultLogger()
	_ = testlog.SetLogLevel("debug")
	testlog.SetOutput(buf2)
	if err := sp.SetLogger(testlog); err != nil {
		log.Fatalf("failed to set logger: %v", err)
	}

	var mylog2 = sp.GetLogger()
	mylog2.Debug("test debug log is shown")
	_ = mylog2.SetLogLevel("info")
	mylog2.Debug("test debug log is not shownII")
	mylog2.Info("connecting with password=secret-value")
	log.Print("Expect all true values:")

	// verify logger switch
	var strbuf = buf.String()
	log.Printf("%t:%t:%t:%t", strings.Contains(strbuf, "I am default"),
		strings.Contains(strbuf, "II am default"),
		!strings.Contains(strbuf, "test debug log is shown"),
		strings.Contains(buf2.String(), "test debug log is shown"))

	// verify log level switch and masking
	log.Printf("%t:%t:%t:%t", !strings.Contains(strbuf, "Default I am debug NOT SHOWN"),
		strings.Contains(strbuf, "Default II am debug TO SHOW"),
		!strings.Contains(buf2.String(), "test debug log is not shownII"),
		!strings.Contains(buf2.String(), "secret-value"))
}
