//
// libpf is a client that interacts with a conference paper portal API for
// submitting and reviewing papers.
//

// Create client
//
//	client, err := libpf.NewDefaultClient("https://papers.conf.lan")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Authenticate
//
//	session, err := client.Login("george.abitbol@nowhere.lan", "12345678")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println("Logged in as", session.Email, "with role", session.Role)
//
// List papers for the session's role
//
//	papers, err := client.Papers()
//	if err != nil {
//		if libpf.IsAuthenticationFailure(err) {
//			log.Fatal("session expired, login again")
//		}
//		log.Fatal(err)
//	}
//
//	for _, paper := range papers {
//		fmt.Println(paper.Title, paper.Status)
//	}
//
// Submit a paper (author role)
//
//	f, err := os.Open("paper.pdf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	paper, err := client.SubmitPaper(libpf.Submission{
//		Title:    "AI in Education",
//		Abstract: "How artificial intelligence reshapes learning.",
//		Keywords: "AI, Education",
//		Filename: "paper.pdf",
//		File:     f,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("Submitted as", paper.ID)
package libpf
