package parser

// SamplePoem is analyzed when no input is given (Shakespeare, Sonnet 1)
const SamplePoem = `From fairest creatures we desire increase,
That thereby beauty's rose might never die,
But as the riper should by time decease,
His tender heir might bear his memory:
But thou, contracted to thine own bright eyes,
Feed'st thy light'st flame with self-substantial fuel,
Making a famine where abundance lies,
Thyself thy foe, to thy sweet self too cruel.`

// Sample returns the sample poem as a parsed plain-text source
func Sample() *ParsedFile {
	return &ParsedFile{
		Path:     "sample",
		Content:  []byte(SamplePoem),
		FileType: FileTypeUnknown,
		Title:    "Sonnet 1",
		Author:   "William Shakespeare",
		Stanzas:  SplitStanzas(SamplePoem),
	}
}
